package middleware

func IsAdmin(user *AppUser) bool {
	if user == nil {
		return false
	}
	return user.Role == "admin"
}

// IsCreator reports whether user is the creator identified by creatorID.
func IsCreator(user *AppUser, creatorID string) bool {
	if user == nil {
		return false
	}
	return user.UserID == creatorID
}
