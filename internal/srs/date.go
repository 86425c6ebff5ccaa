// internal/srs/date.go
package srs

import "time"

// StartOfLocalDay は与えられた時刻のローカル日付の 00:00:00 を返します。
// グローバルな時計には依存せず、引数の Location をそのまま使います。
func StartOfLocalDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// AddDays はローカル日付の日境界に切り詰めた上で days 日後を返します
func AddDays(t time.Time, days int) time.Time {
	return StartOfLocalDay(t).AddDate(0, 0, days)
}
