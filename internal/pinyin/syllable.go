// internal/pinyin/syllable.go
package pinyin

import "sort"

// ピンイン音節の有限文法。音節 = (任意の声母) + (韻母)。
// ü は内部的に v で表現します（機械形の綴りに合わせる）。

// 声母（長いものから先に照合する）
var initials = []string{
	"zh", "ch", "sh",
	"b", "p", "m", "f",
	"d", "t", "n", "l",
	"g", "k", "h",
	"j", "q", "x",
	"r", "z", "c", "s",
	"y", "w",
}

// 韻母。複合韻母（iangなど）を単純韻母（aなど）より先に試すため、
// init で長さ降順に並べ替えます。
var finals = []string{
	"a", "o", "e", "er",
	"ai", "ei", "ao", "ou",
	"an", "en", "ang", "eng", "ong",
	"i", "ia", "ie", "iao", "iu",
	"ian", "in", "iang", "ing", "iong",
	"u", "ua", "uo", "uai", "ui", "ue",
	"uan", "un", "uang", "ueng",
	"v", "ve", "van", "vn",
}

func init() {
	sort.Slice(finals, func(i, j int) bool {
		return len(finals[i]) > len(finals[j])
	})
}

// 声調記号つき母音 → (基底母音, 声調) の対応表
var toneMarks = map[rune][4]rune{
	'a': {'ā', 'á', 'ǎ', 'à'},
	'e': {'ē', 'é', 'ě', 'è'},
	'i': {'ī', 'í', 'ǐ', 'ì'},
	'o': {'ō', 'ó', 'ǒ', 'ò'},
	'u': {'ū', 'ú', 'ǔ', 'ù'},
	'ü': {'ǖ', 'ǘ', 'ǚ', 'ǜ'},
}

type vowelTone struct {
	base rune // 'a','e','i','o','u','v'
	tone int  // 1-4
}

var markedVowels map[rune]vowelTone

func init() {
	markedVowels = make(map[rune]vowelTone)
	for base, marks := range toneMarks {
		b := base
		if b == 'ü' {
			b = 'v'
		}
		for i, marked := range marks {
			markedVowels[marked] = vowelTone{base: b, tone: i + 1}
		}
	}
}

func isVowelBase(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'v':
		return true
	}
	return false
}

func isToneDigit(r rune) bool {
	return r >= '0' && r <= '5'
}

// matchSyllable は folded 列の先頭で一致する最長の音節長を返します。
// 一致しなければ 0。声母と韻母の組み合わせ妥当性までは検査しません
// （文法は有限なので、照合は接頭辞一致の総当たりで足ります）。
func matchSyllable(folded []rune) int {
	best := 0
	// 声母なしのケースも含めて試す
	if n := matchFinal(folded); n > best {
		best = n
	}
	for _, ini := range initials {
		if !hasPrefix(folded, ini) {
			continue
		}
		if n := matchFinal(folded[len(ini):]); n > 0 && len(ini)+n > best {
			best = len(ini) + n
		}
	}
	return best
}

// matchFinal は長さ降順で韻母を照合し、最長一致の長さを返します
func matchFinal(folded []rune) int {
	for _, fin := range finals {
		if hasPrefix(folded, fin) {
			return len(fin)
		}
	}
	return 0
}

func hasPrefix(folded []rune, s string) bool {
	if len(folded) < len(s) {
		return false
	}
	for i, c := range s {
		if folded[i] != c {
			return false
		}
	}
	return true
}
