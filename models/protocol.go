package models

type Protocol struct {
	ID       ID        `json:"id"`
	Images   ImageInfo `json:"images"`
	Name     string    `json:"name"`
	Networks IDList    `json:"networks"`
	Tags     TagList   `json:"tags"`
	URL      string    `json:"url"`
}

func (p Protocol) GetID() ID              { return p.ID }
func (p Protocol) GetName() string        { return p.Name }
func (p Protocol) GetImages() ImageInfo   { return p.Images }
func (p Protocol) GetTags() TagList       { return p.Tags }
func (p Protocol) Category() InfoCategory { return CategoryProtocol }

func (p Protocol) Validate() error {
	errs := validateInfo(p.ID, p.Name, p.Tags)
	if err := p.Networks.Validate(); err != nil {
		errs = append(errs, inField("networks", err))
	}
	if err := checkURL("url", p.URL); err != nil {
		errs = append(errs, inField("url", err))
	}
	return joinErrs(errs)
}

func (p *Protocol) UnmarshalJSON(data []byte) error {
	var v Protocol
	err := decodeObject(data,
		required("id", &v.ID),
		required("images", &v.Images),
		required("name", &v.Name),
		required("networks", &v.Networks),
		required("tags", &v.Tags),
		required("url", &v.URL),
	)
	if err != nil {
		return err
	}
	if err := v.Validate(); err != nil {
		return err
	}
	*p = v
	return nil
}
