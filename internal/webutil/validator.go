// internal/webutil/validator.go
package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"deck_id":     "デッキID",
	"card_id":     "カードID",
	"mode":        "学習モード",
	"user_answer": "解答",
	"quality":     "品質評価",
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

	// タグごとのメッセージテンプレートを登録するヘルパー
	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			fieldName := fe.Field()
			translatedFieldName, ok := fieldNameTranslations[fieldName]
			if !ok {
				translatedFieldName = fieldName
			}
			t, _ := ut.T(tag, translatedFieldName)
			return t
		})
	}

	registerTranslation("required", "{0}は必須項目です。")
	registerTranslation("oneof", "{0}に指定できない値が含まれています。")

	// min/max は品質評価 (0-5) の範囲チェックに使うため数値向けの文言にする
	registerTranslationWithParam := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			fieldName := fe.Field()
			translatedFieldName, ok := fieldNameTranslations[fieldName]
			if !ok {
				translatedFieldName = fieldName
			}
			t, _ := ut.T(tag, translatedFieldName, fe.Param())
			return t
		})
	}

	registerTranslationWithParam("min", "{0}は{1}以上で指定してください。")
	registerTranslationWithParam("max", "{0}は{1}以下で指定してください。")
}
