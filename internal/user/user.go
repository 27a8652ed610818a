package user

// User is a Hogwarts user account. Password holds the one-way hash, never the
// plaintext; it is excluded from every outward projection.
type User struct {
	ID       int64
	Username string
	Password string
	Enabled  bool
	Roles    string // space-separated role labels, e.g. "admin user"
}

// View is the public projection of a user record.
type View struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Enabled  bool   `json:"enabled"`
	Roles    string `json:"roles"`
}

// View returns the public projection of the record.
func (u User) View() View {
	return View{ID: u.ID, Username: u.Username, Enabled: u.Enabled, Roles: u.Roles}
}

// Update carries the mutable fields of a user record. Enabled and Roles are
// pointers so that "absent" and "set to zero value" stay distinguishable;
// for non-admin actors both are ignored regardless.
type Update struct {
	Username string
	Enabled  *bool
	Roles    *string
}
