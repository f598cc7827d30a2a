// internal/pinyin/tone.go
package pinyin

import (
	"strings"
	"unicode"
)

// ToNumbered は表示形（声調記号）を機械形（末尾数字）に変換します。
// 空白区切りでも続け書きでも受け付け、音節ごとに空白で区切って返します。
// 例: "nǐhǎo" → "ni3 hao3", "Nǐ hǎo" → "Ni3 hao3"
// 軽声は数字なし（入力の 5/0 は落とす）。ü は v になります。
func ToNumbered(s string) string {
	var out []string
	for _, field := range strings.Fields(s) {
		for _, syl := range SegmentSyllables(field) {
			out = append(out, syllableToNumbered(syl))
		}
	}
	return strings.Join(out, " ")
}

// ToMarked は機械形を表示形に変換します。ToNumbered の逆変換。
// 例: "ni3 hao3" → "nǐ hǎo", "nv3" → "nǚ"
func ToMarked(s string) string {
	var out []string
	for _, field := range strings.Fields(s) {
		for _, syl := range SegmentSyllables(field) {
			out = append(out, syllableToMarked(syl))
		}
	}
	return strings.Join(out, " ")
}

// syllableToNumbered は1音節を機械形にします。
// 先頭文字の大文字小文字だけ保存し、残りは小文字にします。
func syllableToNumbered(syl string) string {
	runes := []rune(syl)
	tone := 0
	var letters []rune

	for _, r := range runes {
		if isToneDigit(r) {
			d := int(r - '0')
			if d >= 1 && d <= 4 {
				tone = d
			}
			continue // 5/0（軽声）は落とす
		}
		lower := unicode.ToLower(r)
		if vt, ok := markedVowels[lower]; ok {
			tone = vt.tone
			letters = append(letters, vt.base)
			continue
		}
		if lower == 'ü' {
			letters = append(letters, 'v')
			continue
		}
		letters = append(letters, lower)
	}

	if len(letters) == 0 {
		return syl
	}
	if len(runes) > 0 && unicode.IsUpper(runes[0]) {
		letters[0] = unicode.ToUpper(letters[0])
	}
	if tone >= 1 && tone <= 4 {
		letters = append(letters, rune('0'+tone))
	}
	return string(letters)
}

// syllableToMarked は1音節を表示形にします。
// 声調記号の位置は標準規則: a か e があればそこ、なければ ou の o、
// それ以外は最後の母音。軽声は無印。
func syllableToMarked(syl string) string {
	runes := []rune(syl)
	tone := 0
	var letters []rune

	for _, r := range runes {
		if isToneDigit(r) {
			d := int(r - '0')
			if d >= 1 && d <= 4 {
				tone = d
			}
			continue
		}
		lower := unicode.ToLower(r)
		if vt, ok := markedVowels[lower]; ok {
			// 既に記号つきの入力もそのまま解釈する
			tone = vt.tone
			lower = vt.base
		}
		if lower == 'v' {
			lower = 'ü'
		}
		letters = append(letters, lower)
	}

	if len(letters) == 0 {
		return syl
	}

	if tone >= 1 && tone <= 4 {
		pos := toneMarkPosition(letters)
		if pos >= 0 {
			base := letters[pos]
			if marks, ok := toneMarks[base]; ok {
				letters[pos] = marks[tone-1]
			}
		}
	}
	if unicode.IsUpper(runes[0]) {
		letters[0] = unicode.ToUpper(letters[0])
	}
	return string(letters)
}

// toneMarkPosition は声調記号を置く母音の位置を返します
func toneMarkPosition(letters []rune) int {
	lastVowel := -1
	for i, r := range letters {
		switch r {
		case 'a', 'e':
			return i
		case 'o':
			if i+1 < len(letters) && letters[i+1] == 'u' {
				return i // "ou" の o
			}
			lastVowel = i
		case 'i', 'u', 'ü':
			lastVowel = i
		}
	}
	return lastVowel
}
