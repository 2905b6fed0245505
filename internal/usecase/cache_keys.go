package usecase

// Cache keys for the memoized first pages. Only the default first page
// is cached; any other window always hits the repository.
const (
	usersFirstPageKey = "users:first-page"
	teamsFirstPageKey = "teams:first-page"
)

// listPage is the snapshot shape stored under the keys above.
type listPage[T any] struct {
	Items []T
	Meta  PageMeta
}
