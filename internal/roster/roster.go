// Package roster holds the static employee roster and the fixed admin
// credential pair. Passwords follow the portal's deliberate simplification:
// an employee's password is its own employee ID. Credentials are kept as
// bcrypt hashes so the comparison path never touches plaintext equality.
package roster

import "golang.org/x/crypto/bcrypt"

// Employee is one roster entry: employee ID mapped to display name.
type Employee struct {
	EmployeeID string
	Name       string
}

// Fixed admin credential pair.
const (
	AdminID       = "1111"
	adminPassword = "1111"
	AdminName     = "관리자"
)

// Departments an employee can be assigned at login. The department is
// portal-assigned, never requester-chosen.
var Departments = []string{
	"경영지원팀",
	"IT 개발팀",
	"마케팅팀",
	"인사팀",
	"영업본부",
	"디자인팀",
}

var employees = []Employee{
	{EmployeeID: "120032", Name: "이주헌"},
	{EmployeeID: "120034", Name: "김민준"},
	{EmployeeID: "120041", Name: "박서연"},
	{EmployeeID: "120047", Name: "최지우"},
	{EmployeeID: "120053", Name: "정도윤"},
	{EmployeeID: "120058", Name: "강하은"},
	{EmployeeID: "120062", Name: "윤시우"},
	{EmployeeID: "120075", Name: "임수아"},
	{EmployeeID: "120081", Name: "한예준"},
	{EmployeeID: "120088", Name: "오지민"},
}

var (
	employeesByID   = make(map[string]Employee, len(employees))
	credentialsByID = make(map[string][]byte, len(employees)+1)
)

func init() {
	for _, employee := range employees {
		employeesByID[employee.EmployeeID] = employee
		credentialsByID[employee.EmployeeID] = mustHash(employee.EmployeeID)
	}
	credentialsByID[AdminID] = mustHash(adminPassword)
}

func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic("roster: hashing credential: " + err.Error())
	}
	return hash
}

// Lookup returns the roster entry for an employee ID by exact string key.
func Lookup(employeeID string) (Employee, bool) {
	employee, ok := employeesByID[employeeID]
	return employee, ok
}

// VerifyCredential checks a login pair against the stored credential hash.
func VerifyCredential(loginID, password string) bool {
	hash, ok := credentialsByID[loginID]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
