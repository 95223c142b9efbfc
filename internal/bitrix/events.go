package bitrix

import "strconv"

// Имена событий Битрикса, которые релей умеет обрабатывать.
const (
	EventAppInstall = "ONAPPINSTALL"
	EventBotJoin    = "ONIMBOTJOINCHAT"
	EventMessageAdd = "ONIMBOTMESSAGEADD"
)

type EventKind int

const (
	// KindUnknown - нераспознанное событие либо распознанное, но без
	// обязательных полей. Подтверждается 200 и игнорируется.
	KindUnknown EventKind = iota
	KindInstall
	KindBotJoined
	KindMessageAdded
)

// Event - классифицированное входящее событие вебхука.
type Event struct {
	Kind EventKind
	Name string // исходное значение поля event

	// токен приложения, которым подписано событие
	AppToken string

	// KindInstall: auth-payload установки
	Auth map[string]string

	// KindBotJoined / KindMessageAdded
	ChatID     int64
	UserID     int64
	UserName   string
	Text       string
	IsExternal bool

	Raw map[string]any
}

// Classify разбирает дерево формы в типизированное событие. Распознанные
// события с недостающими обязательными полями деградируют в KindUnknown:
// вебхук обязан ответить 2xx, иначе платформа начнет ретраи.
func Classify(tree map[string]any) Event {
	ev := Event{
		Name:     str(tree, "event"),
		AppToken: str(tree, "auth", "application_token"),
		Raw:      tree,
	}

	switch ev.Name {
	case EventAppInstall:
		ev.Auth = stringMap(sub(tree, "auth"))
		if ev.AppToken == "" {
			return ev
		}
		ev.Kind = KindInstall

	case EventBotJoin:
		chatID, okChat := intField(tree, "data", "PARAMS", "CHAT_ID")
		userID, okUser := intField(tree, "data", "USER", "ID")
		if !okChat || !okUser {
			return ev
		}
		ev.Kind = KindBotJoined
		ev.ChatID = chatID
		ev.UserID = userID
		ev.UserName = str(tree, "data", "USER", "NAME")

	case EventMessageAdd:
		chatID, okChat := intField(tree, "data", "PARAMS", "CHAT_ID")
		authorID, okAuthor := intField(tree, "data", "PARAMS", "AUTHOR_ID")
		text := str(tree, "data", "PARAMS", "MESSAGE")
		if !okChat || !okAuthor || text == "" {
			return ev
		}
		ev.Kind = KindMessageAdded
		ev.ChatID = chatID
		ev.UserID = authorID
		ev.UserName = str(tree, "data", "USER", "NAME")
		ev.Text = text
		ev.IsExternal = str(tree, "data", "USER", "IS_EXTRANET") == "Y"
	}

	return ev
}

func intField(tree map[string]any, path ...string) (int64, bool) {
	s := str(tree, path...)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func stringMap(m map[string]any) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
