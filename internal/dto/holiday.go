package dto

// CreateHolidayRequest declares a campus-wide holiday.
type CreateHolidayRequest struct {
	Date        string `json:"date" validate:"required,isodate"`
	Description string `json:"description" validate:"required,max=255"`
}

// HolidayListRequest bounds a holiday listing.
type HolidayListRequest struct {
	From string `form:"from" validate:"omitempty,isodate"`
	To   string `form:"to" validate:"omitempty,isodate"`
}
