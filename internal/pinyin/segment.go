// internal/pinyin/segment.go
package pinyin

import "unicode"

// fold は1文字を照合用の小文字基底文字に落とします。
// 声調記号つき母音は基底母音に、ü は v になります。
// 文字でないもの（数字や記号）は 0 を返します。
func fold(r rune) rune {
	lower := unicode.ToLower(r)
	if vt, ok := markedVowels[lower]; ok {
		return vt.base
	}
	if lower == 'ü' {
		return 'v'
	}
	if lower >= 'a' && lower <= 'z' {
		return lower
	}
	return 0
}

// SegmentSyllables は空白なしの音節列を音節ごとに分割します。
//
// 貪欲最長一致のあと、2つの補正規則を適用します:
//  1. 一致が ng でない裸の n で終わり、続きが母音で始まる場合、
//     その n は次音節の声母なので1文字返す（gèrén → gè rén）。
//  2. 同様に、末尾の r（声母なしの「er」音節自体は除く）の直後が
//     母音なら1文字返す。
//
// 補正後、残りが有効な音節で始められない場合は一致を1文字ずつ
// 縮めて後退します（長さ1まで。1文字は無条件で音節扱い）。
// これにより任意の入力に対して必ず停止し、結果の連結は入力に
// 一致します（最悪ケースは1文字1音節）。
func SegmentSyllables(s string) []string {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}

	folded := make([]rune, len(runes))
	for i, r := range runes {
		folded[i] = fold(r)
	}

	var syllables []string
	i := 0
	for i < len(runes) {
		// 文字以外（声調数字・記号）は単独トークンにする。
		// 声調数字は通常このループでは現れない（音節末尾に取り込むため）。
		if folded[i] == 0 {
			syllables = append(syllables, string(runes[i]))
			i++
			continue
		}

		n := matchSyllable(folded[i:])
		if n == 0 {
			n = 1 // 1文字フォールバック
		}

		// 補正規則1: 裸の n + 母音
		if n >= 2 && folded[i+n-1] == 'n' && startsWithVowel(folded, i+n) {
			n--
		}
		// 補正規則2: 末尾の r + 母音（声母なしの er 自体は対象外）
		if n >= 2 && folded[i+n-1] == 'r' && !(n == 2 && folded[i] == 'e') && startsWithVowel(folded, i+n) {
			n--
		}

		// 残りが音節を開始できるまで後退する
		for n > 1 {
			rest := folded[i+n:]
			if len(rest) == 0 || rest[0] == 0 || matchSyllable(rest) > 0 {
				break
			}
			n--
		}

		// 直後の声調数字は音節に取り込む（機械形 "ni3hao3" など）
		if i+n < len(runes) && isToneDigit(runes[i+n]) {
			n++
		}

		syllables = append(syllables, string(runes[i:i+n]))
		i += n
	}

	return syllables
}

func startsWithVowel(folded []rune, i int) bool {
	return i < len(folded) && isVowelBase(folded[i])
}
