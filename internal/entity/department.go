package entity

type Department struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Employees []Employee `db:"-"`
}

// GetDepartmentsParams are the optional filters of a department listing.
type GetDepartmentsParams struct {
	ID   []int64
	Name *string
}
