package valueobjects

import "fmt"

type Department string

const (
	DepartmentMaintenance Department = "Maintenance"
	DepartmentElectrical  Department = "Electrical"
	DepartmentPlumbing    Department = "Plumbing"
	DepartmentCleaning    Department = "Cleaning"
	DepartmentSecurity    Department = "Security"
)

var validDepartments = map[Department]bool{
	DepartmentMaintenance: true,
	DepartmentElectrical:  true,
	DepartmentPlumbing:    true,
	DepartmentCleaning:    true,
	DepartmentSecurity:    true,
}

func (d Department) String() string {
	return string(d)
}

func (d Department) IsValid() bool {
	return validDepartments[d]
}

func NewDepartment(s string) (Department, error) {
	d := Department(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid department: %s", s)
	}
	return d, nil
}
