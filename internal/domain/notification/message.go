package notification

import "fmt"

const (
	titleJobApplication    = "Đơn ứng tuyển mới"
	titleJobMatch          = "Việc làm phù hợp"
	titleApplicationUpdate = "Cập nhật đơn ứng tuyển"
)

var statusTexts = map[string]string{
	"reviewing": "Đang xem xét",
	"interview": "Mời phỏng vấn",
	"accepted":  "Được chấp nhận",
	"rejected":  "Bị từ chối",
}

// StatusText maps an application status to its display text. Unknown
// statuses pass through unchanged.
func StatusText(status string) string {
	if t, ok := statusTexts[status]; ok {
		return t
	}
	return status
}

func JobApplicationDraft(employerID, applicantName, jobTitle, jobID string) Draft {
	return Draft{
		UserID:    employerID,
		Title:     titleJobApplication,
		Message:   fmt.Sprintf("%s đã ứng tuyển vào vị trí \"%s\"", applicantName, jobTitle),
		Type:      TypeJobApplication,
		RelatedID: jobID,
	}
}

func JobMatchDraft(candidateID, jobTitle, jobID string) Draft {
	return Draft{
		UserID:    candidateID,
		Title:     titleJobMatch,
		Message:   fmt.Sprintf("Chúng tôi tìm thấy một việc làm phù hợp với kỹ năng của bạn: \"%s\"", jobTitle),
		Type:      TypeJobMatch,
		RelatedID: jobID,
	}
}

func ApplicationUpdateDraft(candidateID, jobTitle, status, applicationID string) Draft {
	return Draft{
		UserID:    candidateID,
		Title:     titleApplicationUpdate,
		Message:   fmt.Sprintf("Đơn ứng tuyển của bạn vào vị trí \"%s\" đã được cập nhật: %s", jobTitle, StatusText(status)),
		Type:      TypeApplicationUpdate,
		RelatedID: applicationID,
	}
}
