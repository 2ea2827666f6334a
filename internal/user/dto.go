// AngelaMos | 2026
// dto.go

package user

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
	Role     string `json:"role"     validate:"required,oneof=Master Normal"`
}

// UserResponse never carries the password.
type UserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		Username: u.Username,
		Role:     u.Role,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
