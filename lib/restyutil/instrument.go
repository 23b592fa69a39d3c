package restyutil

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type InstrumentOutput interface {
	Write(id string, contents string)
}

// InstrumentClient dumps every request/response pair the client sees to
// `output`, one file per exchange. Tracing is handled separately by
// telemetry.InstrumentResty, this is purely for offline inspection of
// scraped pages. `output` can be nil, in which case this is a no-op.
func InstrumentClient(client *resty.Client, output InstrumentOutput) {
	if output == nil {
		return
	}

	var idcounter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := strconv.FormatUint(atomic.AddUint64(&idcounter, 1), 10)
		output.Write(id, fmt.Sprintf(
			"%s %s\nstatus: %s\n\n%s",
			res.Request.Method,
			res.Request.URL,
			res.Status(),
			res.String(),
		))
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		id := strconv.FormatUint(atomic.AddUint64(&idcounter, 1), 10)
		output.Write(id, fmt.Sprintf(
			"%s %s\nerror: %s\n",
			req.Method,
			req.URL,
			err.Error(),
		))
	})
}
