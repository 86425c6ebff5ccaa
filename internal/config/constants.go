// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "flashdeck_keep"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort = ":8080"
	DefaultLogLevel   = "info"
	DefaultNewLimit   = 20
	// MaxNewLimit は new_limit クエリパラメータの上限です
	MaxNewLimit = 100
	// スマートインポートが1回で取り込む単語数の既定値と上限
	DefaultImportWordsLimit = 50
	MaxImportWordsLimit     = 200
)

// 外部サービスのエンドポイント
const (
	DefaultDictionaryBaseURL        = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultPixabayBaseURL           = "https://pixabay.com/api/"
	DefaultWordHelperTimeoutSeconds = 10
)
