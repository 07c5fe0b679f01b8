package models

// Review is an append-only customer testimonial.
type Review struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Rating    int    `db:"rating" json:"rating"`
	Comment   string `db:"comment" json:"comment"`
	Image     string `db:"image" json:"image,omitempty"`
	CreatedAt string `db:"created_at" json:"created_at"`
}
