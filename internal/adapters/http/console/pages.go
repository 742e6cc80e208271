package console

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/smarthrm/internal/notify"
	"github.com/okian/smarthrm/internal/pipeline"
	"github.com/okian/smarthrm/internal/resources/department"
	"github.com/okian/smarthrm/internal/resources/employee"
	"github.com/okian/smarthrm/internal/resources/skill"
	"github.com/okian/smarthrm/internal/resources/training"
	"github.com/okian/smarthrm/internal/router"
	"github.com/samber/lo"
)

// handleEmployees handles GET /employees?empName&pageNum&pageSize.
func (s *Server) handleEmployees(w http.ResponseWriter, r *http.Request) {
	pageNum, _, err := intParam(r, "pageNum")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pageSize, _, err := intParam(r, "pageSize")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	page, err := s.deps.Employees.List(r.Context(), employee.ListParams{
		EmpName:  r.URL.Query().Get("empName"),
		PageNum:  pageNum,
		PageSize: pageSize,
	})
	if err != nil {
		s.upstream(w, r, "employees.list", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleDepartments handles GET /departments?searchKey&pageNum&pageSize.
func (s *Server) handleDepartments(w http.ResponseWriter, r *http.Request) {
	pageNum, _, err := intParam(r, "pageNum")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pageSize, _, err := intParam(r, "pageSize")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reply, err := s.deps.Departments.List(r.Context(), department.ListParams{
		SearchKey: r.URL.Query().Get("searchKey"),
		PageNum:   pageNum,
		PageSize:  pageSize,
	})
	if err != nil {
		s.upstream(w, r, "departments.list", err)
		return
	}
	writeReply(w, reply)
}

// handleSkills handles GET /skills?name or ?pageNum&pageSize.
func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		s.reply(w, r, "skills.search")(s.deps.Skills.Search(r.Context(), name))
		return
	}
	pageNum, _, err := intParam(r, "pageNum")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pageSize, _, err := intParam(r, "pageSize")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.reply(w, r, "skills.list")(s.deps.Skills.List(r.Context(), skill.PageParams{PageNum: pageNum, PageSize: pageSize}))
}

// handleTrainings handles GET /trainings?name, ?skillId or ?page&size.
func (s *Server) handleTrainings(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		s.reply(w, r, "trainings.search")(s.deps.Trainings.Search(r.Context(), name))
		return
	}
	skillID, ok, err := intParam(r, "skillId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if ok {
		s.reply(w, r, "trainings.by_skill")(s.deps.Trainings.BySkill(r.Context(), skillID))
		return
	}
	page, _, err := intParam(r, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	size, _, err := intParam(r, "size")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.reply(w, r, "trainings.list")(s.deps.Trainings.List(r.Context(), training.PageParams{Page: page, Size: size}))
}

// handleProjectMatch handles GET /project-match?projectName, ?empId, ?projectId
// or no parameters for every project.
func (s *Server) handleProjectMatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if name := q.Get("projectName"); name != "" {
		s.reply(w, r, "projects.match_name")(s.deps.Projects.MatchByProjectName(r.Context(), name))
		return
	}
	empID, ok, err := intParam(r, "empId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if ok {
		s.reply(w, r, "projects.match_employee")(s.deps.Projects.MatchByEmployee(r.Context(), empID))
		return
	}
	projectID, ok, err := intParam(r, "projectId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if ok {
		s.reply(w, r, "projects.detail")(s.deps.Projects.Detail(r.Context(), projectID))
		return
	}
	s.reply(w, r, "projects.all")(s.deps.Projects.All(r.Context()))
}

type skillMatchOptions struct {
	Skills      json.RawMessage `json:"skills"`
	Projects    json.RawMessage `json:"projects"`
	Departments json.RawMessage `json:"departments"`
}

// handleSkillMatch handles GET /skill-match?requiredSkills=id:min,... and
// answers the option lists when no requirement is given.
func (s *Server) handleSkillMatch(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("requiredSkills"); raw != "" {
		required := lo.Compact(lo.Map(strings.Split(raw, ","), func(v string, _ int) string {
			return strings.TrimSpace(v)
		}))
		s.reply(w, r, "skillmatch.match")(s.deps.SkillMatch.Match(r.Context(), required))
		return
	}

	ctx := r.Context()
	var opts skillMatchOptions
	for _, step := range []struct {
		op   string
		call func() (pipeline.Reply, error)
		dst  *json.RawMessage
	}{
		{"skillmatch.skills", func() (pipeline.Reply, error) { return s.deps.SkillMatch.Skills(ctx) }, &opts.Skills},
		{"skillmatch.projects", func() (pipeline.Reply, error) { return s.deps.SkillMatch.Projects(ctx) }, &opts.Projects},
		{"skillmatch.departments", func() (pipeline.Reply, error) { return s.deps.SkillMatch.Departments(ctx) }, &opts.Departments},
	} {
		reply, err := step.call()
		if err != nil {
			s.upstream(w, r, step.op, err)
			return
		}
		*step.dst = bodyOrNull(reply)
	}
	writeJSON(w, http.StatusOK, opts)
}

// handleNav handles GET /nav.
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Redirect string           `json:"redirect"`
		Items    []router.NavItem `json:"items"`
	}{Redirect: s.table.Redirect(), Items: s.table.Nav()})
}

// handleNotifications handles GET /notifications.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	entries := []notify.Entry{}
	if s.deps.Notifications != nil {
		entries = append(entries, s.deps.Notifications.Entries()...)
	}
	writeJSON(w, http.StatusOK, entries)
}

// reply returns a continuation that renders a module result.
func (s *Server) reply(w http.ResponseWriter, r *http.Request, op string) func(pipeline.Reply, error) {
	return func(reply pipeline.Reply, err error) {
		if err != nil {
			s.upstream(w, r, op, err)
			return
		}
		writeReply(w, reply)
	}
}

func bodyOrNull(reply pipeline.Reply) json.RawMessage {
	if reply.Kind != pipeline.KindObject {
		return json.RawMessage("null")
	}
	return reply.Body
}
