package domain

// Role identifies one of the four role rosters a project carries.
type Role string

const (
	RoleProductManager Role = "product_manager"
	RoleBackend        Role = "backend"
	RoleFrontend       Role = "frontend"
	RoleQA             Role = "qa"
)

// AllRoles lists roles in roster order: product, backend, frontend, qa.
// Assignment emission iterates rosters in this order, which makes the
// lane tie-break for equal start dates deterministic.
var AllRoles = []Role{RoleProductManager, RoleBackend, RoleFrontend, RoleQA}

// DisplayName returns the short Chinese label used on schedule bars.
func (r Role) DisplayName() string {
	switch r {
	case RoleProductManager:
		return "产品"
	case RoleBackend:
		return "后端"
	case RoleFrontend:
		return "前端"
	case RoleQA:
		return "测试"
	default:
		return string(r)
	}
}

type ProjectStatus string

const (
	StatusNotStarted       ProjectStatus = "未开始"
	StatusDiscussion       ProjectStatus = "讨论中"
	StatusRequirementsDone ProjectStatus = "需求完成"
	StatusReviewDone       ProjectStatus = "评审完成"
	StatusProductDesign    ProjectStatus = "产品设计"
	StatusInProgress       ProjectStatus = "开发中"
	StatusDevDone          ProjectStatus = "开发完成"
	StatusTesting          ProjectStatus = "测试中"
	StatusTestDone         ProjectStatus = "测试完成"
	StatusPaused           ProjectStatus = "暂停"
	StatusLaunched         ProjectStatus = "已上线"
)

// ValidProjectStatuses is the canonical set of accepted status strings.
var ValidProjectStatuses = map[ProjectStatus]bool{
	StatusNotStarted: true, StatusDiscussion: true, StatusRequirementsDone: true,
	StatusReviewDone: true, StatusProductDesign: true, StatusInProgress: true,
	StatusDevDone: true, StatusTesting: true, StatusTestDone: true,
	StatusPaused: true, StatusLaunched: true,
}

type Priority string

const (
	PriorityDeptOKR    Priority = "部门OKR相关"
	PriorityCompanyOKR Priority = "公司OKR相关"
	PriorityBusiness   Priority = "业务需求"
	PriorityTechOpt    Priority = "技术优化"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[Priority]bool{
	PriorityDeptOKR: true, PriorityCompanyOKR: true,
	PriorityBusiness: true, PriorityTechOpt: true,
}
