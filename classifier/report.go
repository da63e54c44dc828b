package classifier

// CallSite names the place in the classifier where a boundary condition
// was met.
type CallSite uint8

const (
	SiteFrameHeader CallSite = iota
	SiteFrameBeyondView
	SiteFrameFilterLimit
	SiteRecordLimit
	SiteTableSizeUpdate
	SiteLiteralHeader
	SiteContentType
	SiteHeaderLimit

	NumCallSites
)

var callSiteStr = map[CallSite]string{
	SiteFrameHeader:      "frame_header",
	SiteFrameBeyondView:  "frame_beyond_view",
	SiteFrameFilterLimit: "frame_filter_limit",
	SiteRecordLimit:      "record_limit",
	SiteTableSizeUpdate:  "table_size_update",
	SiteLiteralHeader:    "literal_header",
	SiteContentType:      "content_type",
	SiteHeaderLimit:      "header_limit",
}

func (s CallSite) String() string {
	if name, ok := callSiteStr[s]; ok {
		return name
	}
	return "UNKNOW"
}

// ErrorCode is the kind of condition reported for a call site.
type ErrorCode uint8

const (
	ErrNone ErrorCode = iota
	ErrInsufficientData
	ErrInvalidFrame
	ErrLimitReached
)

var errorCodeStr = map[ErrorCode]string{
	ErrNone:             "none",
	ErrInsufficientData: "insufficient_data",
	ErrInvalidFrame:     "invalid_frame",
	ErrLimitReached:     "limit_reached",
}

func (e ErrorCode) String() string {
	if name, ok := errorCodeStr[e]; ok {
		return name
	}
	return "other"
}

// Reporter receives the boundary conditions met while classifying. None of
// them change the verdict. Implementations are called from the scan path
// and must not block.
type Reporter interface {
	Report(site CallSite, code ErrorCode)
}

func report(r Reporter, site CallSite, code ErrorCode) {
	if r != nil {
		r.Report(site, code)
	}
}
