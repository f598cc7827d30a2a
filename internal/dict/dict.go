// internal/dict/dict.go
package dict

import (
	"context"

	"go_5_hanzi_drill/internal/pinyin"
)

// Entry は外部辞書が返す語釈1件です
type Entry struct {
	Hanzi   string
	Pinyin  string
	Glosses []string
}

// Lookup は外部の辞書・字解コラボレータの契約です。
// 本体では実装せず、ヒントによる絞り込み方針（PickEntry）だけを持ちます。
type Lookup interface {
	LookupEntries(ctx context.Context, hanzi string) ([]Entry, error)
}

// PickEntry は候補エントリから読みヒントに最も合うものを選びます。
// 優先順: 読み完全一致 → 声調を無視した一致 → 先頭エントリ。
// 候補なしは nil。ヒントが空なら先頭エントリを返します。
func PickEntry(entries []Entry, hint string) *Entry {
	if len(entries) == 0 {
		return nil
	}
	if hint == "" {
		return &entries[0]
	}

	for i := range entries {
		if pinyin.SameReading(entries[i].Pinyin, hint) {
			return &entries[i]
		}
	}

	stripped := pinyin.StripTones(hint)
	for i := range entries {
		if pinyin.StripTones(entries[i].Pinyin) == stripped {
			return &entries[i]
		}
	}

	return &entries[0]
}
