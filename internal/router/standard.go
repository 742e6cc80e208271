package router

// Application routes.
const (
	PathEmployees    = "/employees"
	PathDepartments  = "/departments"
	PathSkills       = "/skills"
	PathTrainings    = "/trainings"
	PathProjectMatch = "/project-match"
	PathSkillMatch   = "/skill-match"
)

// Pages supplies a loader per application page.
type Pages struct {
	Employees    Loader
	Departments  Loader
	Skills       Loader
	Trainings    Loader
	ProjectMatch Loader
	SkillMatch   Loader
}

// Standard builds the application table. The root redirects to the employee page.
func Standard(p Pages) (*Table, error) {
	return NewTable(PathEmployees,
		Entry{Path: PathEmployees, Name: "Employees", Loader: p.Employees, Meta: Meta{Title: "员工管理", Icon: "User"}},
		Entry{Path: PathDepartments, Name: "Departments", Loader: p.Departments, Meta: Meta{Title: "部门管理", Icon: "OfficeBuilding"}},
		Entry{Path: PathSkills, Name: "Skills", Loader: p.Skills, Meta: Meta{Title: "技能管理", Icon: "Trophy"}},
		Entry{Path: PathTrainings, Name: "Trainings", Loader: p.Trainings, Meta: Meta{Title: "培训管理", Icon: "Reading"}},
		Entry{Path: PathProjectMatch, Name: "ProjectMatch", Loader: p.ProjectMatch, Meta: Meta{Title: "项目匹配", Icon: "Connection"}},
		Entry{Path: PathSkillMatch, Name: "SkillMatch", Loader: p.SkillMatch, Meta: Meta{Title: "技能匹配", Icon: "Search"}},
	)
}
