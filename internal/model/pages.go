package model

// EmployeePage is the data of GET /employees/.
type EmployeePage struct {
	Employees     []Employee `json:"employees"`
	PageNum       int        `json:"pageNum"`
	PageSize      int        `json:"pageSize"`
	TotalPages    int        `json:"totalPages"`
	TotalElements int64      `json:"totalElements"`
	EmpName       string     `json:"empName,omitempty"`
}

// DepartmentPage is the body of GET /departments/.
type DepartmentPage struct {
	Departments []Department `json:"departments"`
	PageNum     int          `json:"pageNum"`
	PageSize    int          `json:"pageSize"`
	Total       int64        `json:"total"`
	TotalPages  int          `json:"totalPages"`
}

// FormOptions lists the choices offered by the employee form.
type FormOptions struct {
	Departments  []Department `json:"departments"`
	AllProjects  []Project    `json:"allProjects"`
	AllTasks     []Task       `json:"allTasks"`
	AllTrainings []Training   `json:"allTrainings"`
	AllSkills    []Skill      `json:"allSkills"`
}

// EmployeeDetail is the data of GET /employees/{id}: the employee, the form
// options and the ids already linked to the employee.
type EmployeeDetail struct {
	FormOptions
	Employee            Employee `json:"employee"`
	ExistingProjectIDs  []int    `json:"existingProjectIds"`
	ExistingTaskIDs     []int    `json:"existingTaskIds"`
	ExistingTrainingIDs []int    `json:"existingTrainingIds"`
	// ExistingSkills is "skillId:proficiency,..." ready for EmployeeInput.Skills.
	ExistingSkills string `json:"existingSkillsStr"`
}

// EmployeeInput is the payload of /employees/add and /employees/mod.
type EmployeeInput struct {
	ID         int    `json:"id,omitempty"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	// JoinDate uses the backend's local date-time layout, YYYY-MM-DDTHH:mm:ss.
	JoinDate          string `json:"joinDate,omitempty"`
	Skills            string `json:"skills,omitempty"`
	NewProjectIDs     []int  `json:"newProjectIds,omitempty"`
	NewManagerTaskIDs []int  `json:"newManagerTaskIds,omitempty"`
	NewTrainingIDs    []int  `json:"newTrainingIds,omitempty"`
}

// JoinDateLayout formats time.Time values for EmployeeInput.JoinDate.
const JoinDateLayout = "2006-01-02T15:04:05"
