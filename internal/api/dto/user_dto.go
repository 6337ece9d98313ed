package dto

import "github.com/shopline/catalog-service/internal/domain"

// UserView is the external representation of a user. Fields are copied one by
// one so that credentials and timestamps can never leak through it.
type UserView struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// NewUserView projects a user.
func NewUserView(u *domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// NewUserViews projects a list, never returning nil.
func NewUserViews(users []domain.User) []UserView {
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, NewUserView(&users[i]))
	}
	return views
}
