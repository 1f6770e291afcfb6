package user

type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Password []byte `json:"-"`
	Id       string `json:"id"`
}

type UserFromToken struct {
	Username string `json:"username"`
	Id       string `json:"id"`
}
