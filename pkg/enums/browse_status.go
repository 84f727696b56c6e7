package enums

// BrowseStatus is the lifecycle state of a session's product listing.
type BrowseStatus string

const (
	BrowseStatusIdle    BrowseStatus = "idle"
	BrowseStatusLoading BrowseStatus = "loading"
	BrowseStatusReady   BrowseStatus = "ready"
	BrowseStatusFailed  BrowseStatus = "failed"
)

// String implements fmt.Stringer.
func (s BrowseStatus) String() string {
	return string(s)
}

// Settled reports whether no request is pending.
func (s BrowseStatus) Settled() bool {
	return s != BrowseStatusLoading
}
