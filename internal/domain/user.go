package domain

// UnknownDept is the sentinel bucket for users with no department name so
// board row ordering stays stable.
const UnknownDept = "未知部门"

// User is an entry in the global user pool.
type User struct {
	ID       string
	Name     string
	Email    string
	DeptName string
}

// DeptOrUnknown returns the department name, or the UnknownDept sentinel
// when none is recorded.
func (u User) DeptOrUnknown() string {
	if u.DeptName == "" {
		return UnknownDept
	}
	return u.DeptName
}
