// internal/model/identity.go
package model

type contextKey string

// UserIDKey は認証済みユーザーIDをコンテキストに格納するためのキー
const UserIDKey contextKey = "userID"
