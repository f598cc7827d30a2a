package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"hanzi":        "漢字",
	"pinyin":       "ピンイン",
	"translations": "訳語",
	"reading":      "読み",
	"mode":         "出題モード",
	"count":        "出題数",
	"strategy":     "選択方式",
	"answer":       "回答",
	"password":     "パスワード",
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 日本語のロケールとトランスレータを設定
	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// フィールド名を日本語化した上でメッセージを生成するヘルパー
	translateField := func(fe validator.FieldError) string {
		if name, ok := fieldNameTranslations[fe.Field()]; ok {
			return name
		}
		return fe.Field()
	}

	registerTranslation := func(tag string, msg string, withParam bool) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			if withParam {
				t, _ := ut.T(tag, translateField(fe), fe.Param())
				return t
			}
			t, _ := ut.T(tag, translateField(fe))
			return t
		})
	}

	registerTranslation("required", "{0}は必須項目です。", false)
	registerTranslation("min", "{0}は{1}以上で入力してください。", true)
	registerTranslation("max", "{0}は{1}以下で入力してください。", true)
	registerTranslation("oneof", "{0}に指定できない値が含まれています。", false)
}
