// Package model holds the HR resources exchanged with the backend. Field names
// follow the backend's JSON.
package model

// SkillLevel is one skill held by an employee.
type SkillLevel struct {
	SkillID     int `json:"skillId"`
	Proficiency int `json:"proficiency"`
}

// ProjectRef links an employee to a project.
type ProjectRef struct {
	ProjID int `json:"projId"`
}

// TaskRef links an employee to a task they manage.
type TaskRef struct {
	TaskID int `json:"taskId"`
}

// Member is an employee participating in a project or training.
type Member struct {
	EmpID int `json:"empId"`
}

// Employee is an employee record. DeptName and DeptType are filled by list and
// detail queries: DeptType is "normal", "unassigned" or "deleted".
type Employee struct {
	ID           int          `json:"_id"`
	EmpName      string       `json:"empName"`
	DepID        *int         `json:"depId,omitempty"`
	JoinDate     string       `json:"joinDate,omitempty"`
	SkillList    []SkillLevel `json:"skillList,omitempty"`
	Projects     []ProjectRef `json:"projects,omitempty"`
	TrainingList []Member     `json:"trainingList,omitempty"`
	Tasks        []TaskRef    `json:"tasks,omitempty"`
	DeptName     string       `json:"deptName,omitempty"`
	DeptType     string       `json:"deptType,omitempty"`
}

// Department is a department record; it doubles as the save payload, where a
// nil ID creates a new department.
type Department struct {
	ID        *int   `json:"id,omitempty"`
	DepName   string `json:"depName"`
	ManagerID *int   `json:"managerId,omitempty"`
	EmpIDs    []int  `json:"empIds,omitempty"`
}

// Skill is a skill catalogue entry.
type Skill struct {
	ID        int    `json:"_id,omitempty"`
	SkillName string `json:"skillName"`
	SkillKind string `json:"skillKind,omitempty"`
}

// Training is a training course.
type Training struct {
	ID        int      `json:"_id,omitempty"`
	TrainName string   `json:"trainName"`
	SkillID   int      `json:"skillId,omitempty"`
	Members   []Member `json:"members,omitempty"`
}

// Project is a project with its members.
type Project struct {
	ID       int      `json:"id,omitempty"`
	ProjName string   `json:"projName"`
	Members  []Member `json:"members,omitempty"`
}

// Task belongs to a project and may have a managing employee.
type Task struct {
	ID        int    `json:"_id,omitempty"`
	TaskName  string `json:"taskName"`
	ProjID    int    `json:"projId,omitempty"`
	ManagerID *int   `json:"managerId,omitempty"`
	Status    string `json:"status,omitempty"`
}
