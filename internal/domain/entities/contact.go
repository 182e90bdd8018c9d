package entities

import "time"

// ContactMessage is a message left through the contact form.
type ContactMessage struct {
	Name      string
	Email     string
	Message   string
	IP        string
	CreatedAt time.Time
}
