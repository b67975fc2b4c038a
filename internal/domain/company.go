package domain

// Company is an organization lead. Category holds exactly one value at a
// time; reassigning it replaces the old one rather than accumulating.
type Company struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Industry    string   `json:"industry"`
	Size        string   `json:"size"`
	Location    string   `json:"location"`
	Website     string   `json:"website"`
	CompanyURL  string   `json:"company_url"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Founded     string   `json:"founded,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
}

func (c *Company) LeadID() string { return c.ID }

func (c *Company) LeadKind() Kind { return KindCompany }

// Clone returns a deep copy safe to hand across goroutines.
func (c *Company) Clone() *Company {
	cc := *c
	if c.Specialties != nil {
		cc.Specialties = make([]string, len(c.Specialties))
		copy(cc.Specialties, c.Specialties)
	}
	return &cc
}
