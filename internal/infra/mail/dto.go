package mail

type NotificationEmailData struct {
	Name    string
	Message string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
