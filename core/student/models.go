package student

import (
	"strings"

	"github.com/ecoone/campus/core/sheet"
)

type (
	// Fees holds the per-fee status cells (Pending, Paid, ...).
	Fees struct {
		Tuition   string `json:"tution_fee_status"`
		Hostel    string `json:"hostel_fee_status"`
		Exam      string `json:"exam_fee_status"`
		Transport string `json:"transport_fee_status"`
	}

	// Student is one row of the students table. Books is a proper list in
	// memory; it is serialized to the comma-joined cell format only at the
	// store boundary.
	Student struct {
		Username   string   `json:"username"`
		Name       string   `json:"name"`
		Department string   `json:"department"`
		Email      string   `json:"email"`
		Phone      string   `json:"phone"`
		Attendance string   `json:"attendance_percentage"`
		Fees       Fees     `json:"fees"`
		Books      []string `json:"books_issued"`
		HostelRoom string   `json:"hostel_room"`
	}
)

func FromRow(r sheet.Row) Student {
	return Student{
		Username:   r.Get("username"),
		Name:       r.Get("name"),
		Department: r.Get("department"),
		Email:      r.Get("email"),
		Phone:      r.Get("phone"),
		Attendance: r.Get("attendance_percentage"),
		Fees: Fees{
			Tuition:   r.Get("tution_fee_status"),
			Hostel:    r.Get("hostel_fee_status"),
			Exam:      r.Get("exam_fee_status"),
			Transport: r.Get("transport_fee_status"),
		},
		Books:      DecodeBooks(r.Get("books_issued")),
		HostelRoom: r.Get("hostel_room"),
	}
}

// Values returns the row cells in students schema order.
func (s Student) Values() []string {
	return []string{
		s.Username, s.Name, s.Department, s.Email, s.Phone, s.Attendance,
		s.Fees.Tuition, s.Fees.Hostel, s.Fees.Exam, s.Fees.Transport,
		EncodeBooks(s.Books), s.HostelRoom,
	}
}

// DecodeBooks parses the comma-joined books_issued cell.
func DecodeBooks(cell string) []string {
	cell = strings.Trim(cell, ",")
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, ",")
	books := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			books = append(books, p)
		}
	}
	return books
}

// EncodeBooks renders the list back to the single-cell format.
func EncodeBooks(books []string) string {
	return strings.Join(books, ",")
}
