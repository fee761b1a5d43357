package types

// Params carries connection parameters extracted from a file header or a
// connection URL. Fields are pointers so that an absent field is distinct
// from an explicitly set value; only set fields participate in merging.
type Params struct {
	Driver   *DriverType
	Host     *string
	Port     *int
	User     *string
	Password *string
	Database *string

	// ConnString retains the original URL verbatim for backends whose
	// preferred connection mechanism takes the whole string (MongoDB)
	ConnString *string
}

// Apply overlays src onto p: every field set in src replaces the
// corresponding field in p, unset fields leave p untouched.
func (p *Params) Apply(src Params) {
	if src.Driver != nil {
		p.Driver = src.Driver
	}
	if src.Host != nil {
		p.Host = src.Host
	}
	if src.Port != nil {
		p.Port = src.Port
	}
	if src.User != nil {
		p.User = src.User
	}
	if src.Password != nil {
		p.Password = src.Password
	}
	if src.Database != nil {
		p.Database = src.Database
	}
	if src.ConnString != nil {
		p.ConnString = src.ConnString
	}
}

// Config is a fully resolved connection configuration. Zero values mean
// the field is absent; validation decides whether that is acceptable for
// the selected driver.
type Config struct {
	Driver   DriverType
	Host     string
	Port     int
	User     string
	Password string
	Database string

	// ConnString is the raw connection URL for drivers that prefer it
	ConnString string
}
