package domain

// Company is a reporting subject registered with the bureau.
type Company struct {
	CompanyID     string  `json:"companyID" db:"company_id"`
	Name          string  `json:"name" db:"name"`
	Town          string  `json:"town" db:"town"`
	Industry      string  `json:"industry" db:"industry"`
	ContactPerson string  `json:"contactPerson" db:"contact_person"`
	ContactPhone  string  `json:"contactPhone" db:"contact_phone"`
	ManagerID     *string `json:"managerID" db:"manager_id"` // assigned reviewer, optional
	AuditFields
}

// Towns is the fixed enumeration of towns/regions companies report under.
var Towns = []string{
	"城东街道", "城西街道", "河口镇", "临港镇", "南桥镇", "北堡乡", "其他",
}

// Industries is the fixed enumeration of industry categories.
var Industries = []string{
	"纺织服装", "机械制造", "电子信息", "食品加工", "建筑建材", "商贸流通", "其他",
}

// IsKnownTown reports whether town is in the fixed enumeration.
func IsKnownTown(town string) bool {
	for _, t := range Towns {
		if t == town {
			return true
		}
	}
	return false
}

// IsKnownIndustry reports whether industry is in the fixed enumeration.
func IsKnownIndustry(industry string) bool {
	for _, i := range Industries {
		if i == industry {
			return true
		}
	}
	return false
}

// CompanyFilter narrows company listings. Empty fields match everything;
// Name matches as a substring.
type CompanyFilter struct {
	Industry string
	Town     string
	Name     string
}
