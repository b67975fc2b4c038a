package domain

// Person is an individual lead. Tags is ordered and duplicate-free;
// AddTag is the only mutation path and keeps it that way.
type Person struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Headline       string   `json:"headline"`
	Location       string   `json:"location"`
	Industry       string   `json:"industry,omitempty"`
	ProfileURL     string   `json:"profile_url"`
	CurrentCompany string   `json:"current_company"`
	Tags           []string `json:"tags"`
}

func (p *Person) LeadID() string { return p.ID }

func (p *Person) LeadKind() Kind { return KindPerson }

func (p *Person) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends tag if absent. Returns true when the tag was added.
func (p *Person) AddTag(tag string) bool {
	if p.HasTag(tag) {
		return false
	}
	p.Tags = append(p.Tags, tag)
	return true
}

// Clone returns a deep copy safe to hand across goroutines.
func (p *Person) Clone() *Person {
	cp := *p
	cp.Tags = make([]string, len(p.Tags))
	copy(cp.Tags, p.Tags)
	return &cp
}
