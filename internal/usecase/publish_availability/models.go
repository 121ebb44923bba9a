package publish_availability

import (
	"time"

	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// Request запрос механика на публикацию календаря доступности.
// При GenerateFullDay слоты строятся по рабочему окну, поле Slots игнорируется.
// При Merge новые слоты добавляются к уже опубликованным, иначе день заменяется.
type Request struct {
	MechanicID      int64
	Date            time.Time
	Slots           []types.TimeString
	Merge           bool
	GenerateFullDay bool
}

// Response итоговое состояние дня после публикации
type Response struct {
	MechanicID int64
	Date       time.Time
	Slots      []string
}
