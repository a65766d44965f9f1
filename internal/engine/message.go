package engine

import "fmt"

// Notification bodies match the phrasing partners already see in chat. Each
// ends with a link back to the app when one is configured.
func submitMessage(author, title, appURL string) string {
	return withLink(fmt.Sprintf("[新しい提案] %sさんが『%s』を提案しました！💑", author, title), appURL)
}

func approveMessage(title, appURL string) string {
	return withLink(fmt.Sprintf("[承認] %s が承認されました！✨ 二人で日程を決めよう！", title), appURL)
}

func scheduleMessage(title, date, appURL string) string {
	return withLink(fmt.Sprintf("[確定] %s の日程が %s に決まりました！🎉", title, date), appURL)
}

func withLink(text, appURL string) string {
	if appURL == "" {
		return text
	}
	return text + "\nアプリを開く: " + appURL
}
