// Package model はドメインモデルを定義する。
package model

// ChatRole はチャットメッセージの発話者区分を表す。
type ChatRole string

const (
	// ChatRoleUser はユーザーの発話。
	ChatRoleUser ChatRole = "me"
	// ChatRoleBot はコーチ（スクリプト応答）の発話。
	ChatRoleBot ChatRole = "bot"
)

// ChatMessage はコーチとの会話1ターンを表す。
type ChatMessage struct {
	Role ChatRole `json:"who"`
	Text string   `json:"text"`
}

// chatGreeting は初回起動時にシードされるコーチの挨拶。
const chatGreeting = "Hi—this is a stigma-free space. What's on your mind?"

// DefaultChatLog は初期状態のチャットログ（挨拶1件）を返す。
func DefaultChatLog() []ChatMessage {
	return []ChatMessage{{Role: ChatRoleBot, Text: chatGreeting}}
}
