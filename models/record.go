package models

// Record is the shape shared by assets, networks and protocols.
type Record interface {
	GetID() ID
	GetName() string
	GetImages() ImageInfo
	GetTags() TagList
	Category() InfoCategory
	Validate() error
}

// validateInfo checks the fields every record carries.
func validateInfo(id ID, name string, tags TagList) []error {
	var errs []error
	if err := id.Validate(); err != nil {
		errs = append(errs, inField("id", err))
	}
	if err := ParseRecordName(name); err != nil {
		errs = append(errs, inField("name", err))
	}
	if err := tags.Validate(); err != nil {
		errs = append(errs, inField("tags", err))
	}
	return errs
}

// ParseRecordName checks that name can serve as the description of the
// record's id enum entry.
func ParseRecordName(name string) error {
	_, err := ParseDescription(name)
	return err
}
