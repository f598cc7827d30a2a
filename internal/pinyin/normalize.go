// internal/pinyin/normalize.go
package pinyin

import "strings"

// Normalize は比較用の正準機械形を返します。
// 小文字化・機械形変換のうえ、英字と声調数字(1-4)以外
// （空白・記号・軽声の5など）をすべて取り除きます。
// 例: "Nǐ hǎo!" → "ni3hao3", "nv3 er2" → "nv3er2"
func Normalize(s string) string {
	numbered := strings.ToLower(ToNumbered(s))
	var b strings.Builder
	b.Grow(len(numbered))
	for _, r := range numbered {
		if (r >= 'a' && r <= 'z') || (r >= '1' && r <= '4') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SameReading は2つのピンイン表記が同じ発音を指すかどうかを返します。
// 表記の揺れ（空白・大文字・記号形/数字形・ü/v）は無視されます。
func SameReading(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// StripTones は正規化したうえで声調情報も取り除きます。
// 辞書引きのヒント照合（完全一致 → 声調無視 → 先頭エントリ）で使います。
func StripTones(s string) string {
	normalized := Normalize(s)
	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToneOptionalMatch は正規化済みの2文字列が「最終音節の声調数字の
// 有無だけが違う」場合に true を返します。多音節語の末尾軽声の
// 付け忘れ・付けすぎを許容するためのもので、2音節以上の語に限ります。
// 完全一致は対象外です（その場合は SameReading が成立している）。
func ToneOptionalMatch(a, b string) bool {
	if a == b {
		return false
	}
	longer, shorter := a, b
	if len(longer) < len(shorter) {
		longer, shorter = shorter, longer
	}
	if len(longer) != len(shorter)+1 {
		return false
	}
	last := longer[len(longer)-1]
	if last < '1' || last > '4' {
		return false
	}
	if longer[:len(longer)-1] != shorter {
		return false
	}
	// 末尾以外の違いは許容しない（上の前方一致で保証済み）。
	// 多音節であることを確認する。
	return len(SegmentSyllables(StripTones(longer))) >= 2
}
