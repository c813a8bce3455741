package models

type Contact struct {
	Key   string `json:"-"`
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Color string `json:"color"`
}

func (c *Contact) Assignee() Assignee {
	return Assignee{Id: c.Id, Name: c.Name, Color: c.Color}
}

type User struct {
	Key      string `json:"-"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Initials string `json:"initials"`
}
