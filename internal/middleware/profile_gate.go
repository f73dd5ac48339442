package middleware

import "net/http"

// ProfileChecker はプロフィールの存在確認のインターフェース。
// state.Aggregateが実装する。
type ProfileChecker interface {
	HasProfile() bool
}

// NewProfileGateMiddleware はプロフィール未作成のままメインページへ
// 直接アクセスされた場合にサインアップ（"/"）へリダイレクトする
// ミドルウェアを返す。参照実装では"/"のみがゲートされていたが、
// ここでは全メインページに適用する。
func NewProfileGateMiddleware(checker ProfileChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !checker.HasProfile() {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
