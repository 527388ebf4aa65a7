package metric

import (
	"time"

	"nostrcal/src-server/utils"
)

func Init(as *utils.AppState) {
	tickerInterval := time.Minute
	storeSize(as, &tickerInterval)
}
