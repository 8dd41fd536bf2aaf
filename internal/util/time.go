package util

import "time"

// Now devolve o instante atual em UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// NowISO devolve o instante atual em UTC no formato ISO-8601,
// o formato canônico de created_at/updated_at nos documentos.
func NowISO() string {
	return Now().Format(time.RFC3339Nano)
}
