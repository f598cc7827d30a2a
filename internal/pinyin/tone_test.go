// internal/pinyin/tone_test.go
package pinyin

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumbered(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"nǐhǎo", "ni3 hao3"},
		{"nǐ hǎo", "ni3 hao3"},
		{"zhōngguó", "zhong1 guo2"},
		{"aì", "ai4"},
		{"nǚ", "nv3"},
		{"lüè", "lve4"},
		// 軽声は数字なし
		{"ma", "ma"},
		{"dòufu", "dou4 fu"},
		// 5 は軽声として落とす
		{"ma5", "ma"},
		// 先頭の大文字は保存、それ以外は小文字化
		{"Běijīng", "Bei3 jing1"},
		{"NǏHǍO", "Ni3 Hao3"},
		// 既に機械形の入力はそのまま正規化される
		{"ni3hao3", "ni3 hao3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ToNumbered(tt.input))
		})
	}
}

func TestToMarked(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ni3 hao3", "nǐ hǎo"},
		{"ni3hao3", "nǐ hǎo"},
		{"zhong1guo2", "zhōng guó"},
		{"ai4", "ài"},
		// 記号位置: a/e 優先
		{"xian1", "xiān"},
		{"xie4", "xiè"},
		// ou の o
		{"dou4", "dòu"},
		// それ以外は最後の母音
		{"guo2", "guó"},
		{"liu2", "liú"},
		{"hui4", "huì"},
		// ü
		{"nv3", "nǚ"},
		{"lve4", "lüè"},
		// 軽声は無印
		{"ma", "ma"},
		{"ma5", "ma"},
		{"Bei3jing1", "Běi jīng"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMarked(tt.input))
		})
	}
}

// 記号位置の優先規則: a/e > ou の o > 最後の母音
func TestToneMarkPosition(t *testing.T) {
	tests := []struct {
		letters string
		wantPos int
	}{
		{"ian", 1},  // a
		{"ie", 1},   // e
		{"ou", 0},   // ou の o
		{"iu", 1},   // 最後の母音
		{"ui", 1},   // 最後の母音
		{"uo", 1},   // 最後の母音
		{"ng", -1},  // 母音なし
	}
	for _, tt := range tests {
		t.Run(tt.letters, func(t *testing.T) {
			assert.Equal(t, tt.wantPos, toneMarkPosition([]rune(tt.letters)))
		})
	}
}

// 往復性: 文法中の全音節 × 全声調で 機械形 → 表示形 → 機械形 が一致する
func TestRoundTrip(t *testing.T) {
	withEmpty := append([]string{""}, initials...)
	for _, ini := range withEmpty {
		for _, fin := range finals {
			for tone := 1; tone <= 5; tone++ {
				machine := fmt.Sprintf("%s%s%d", ini, fin, tone)
				want := ini + fin
				if tone <= 4 {
					want = machine // 軽声(5)は数字が落ちる
				}
				display := ToMarked(machine)
				back := ToNumbered(display)
				assert.Equalf(t, want, back, "syllable %q (display %q)", machine, display)
			}
		}
	}
}
