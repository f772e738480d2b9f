package models

// ReadingRequest is the body of POST /result and /result-with-authcode.
// next_time + next_result describe the following slot; when next_time is
// absent next_result is taken as the next slot's time only.
type ReadingRequest struct {
	CategoryName string       `json:"categoryname" validate:"required"`
	Date         string       `json:"date" validate:"required"`
	Time         string       `json:"time"`
	Number       NumberString `json:"number" validate:"required"`
	NextResult   NumberString `json:"next_result"`
	NextTime     string       `json:"next_time"`
	Key          string       `json:"key"`
	Mode         string       `json:"mode"`
}

// UpsertInput is one reading to merge into the grouped model.
type UpsertInput struct {
	CategoryName     string
	Date             string
	Time             string
	Number           NumberString
	NextResultTime   string
	NextResultNumber NumberString
	Key              string
	Mode             string
}

func (r *ReadingRequest) Input() UpsertInput {
	in := UpsertInput{
		CategoryName: r.CategoryName,
		Date:         r.Date,
		Time:         r.Time,
		Number:       r.Number,
		Key:          r.Key,
		Mode:         r.Mode,
	}
	if r.NextTime != "" {
		in.NextResultTime = r.NextTime
		in.NextResultNumber = r.NextResult
	} else {
		in.NextResultTime = r.NextResult.String()
	}
	return in
}

// FlatUploadRequest is the body of POST /upload-data. The root
// next_result always becomes the uploaded entry's time.
type FlatUploadRequest struct {
	CategoryName string       `json:"categoryname" validate:"required"`
	Date         string       `json:"date" validate:"required"`
	Time         string       `json:"time" validate:"required"`
	Number       NumberString `json:"number" validate:"required"`
	Mode         string       `json:"mode"`
}

type EntryUpdateRequest struct {
	Date       string       `json:"date" validate:"required"`
	Time       string       `json:"time" validate:"required"`
	Number     NumberString `json:"number" validate:"required"`
	NextResult string       `json:"next_result"`
}

type EntryDeleteRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

type RegisterKeyRequest struct {
	Key          string `json:"key" validate:"required|knownKey"`
	CategoryName string `json:"categoryname" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required|email"`
	Password string `json:"password" validate:"required"`
}

type OTPRequest struct {
	Email string `json:"email" validate:"required|email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required|email"`
	OTP   string `json:"otp" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required|email"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required|minLen:6"`
}
