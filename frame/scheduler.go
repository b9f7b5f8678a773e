// Package frame provides a host-ticked frame scheduler.
//
// A Scheduler queues callbacks for the next presented frame, the way a
// browser's animation-frame queue does. The host loop calls Tick once per
// frame; callbacks requested while a tick is running wait for the next one.
package frame

// Handle identifies a queued request. The zero Handle is never issued.
type Handle uint64

type request struct {
	h  Handle
	fn func()
}

// Scheduler is a single-threaded frame callback queue.
//
// It is owned by the host loop and is not safe for concurrent use.
type Scheduler struct {
	seq   Handle
	queue []request
	spare []request
	frame uint64

	running []request
	pos     int
}

func New() *Scheduler {
	return &Scheduler{}
}

// Request queues fn to run on the next Tick and returns its handle.
func (s *Scheduler) Request(fn func()) Handle {
	if fn == nil {
		return 0
	}
	s.seq++
	s.queue = append(s.queue, request{h: s.seq, fn: fn})
	return s.seq
}

// Cancel drops a queued request. It reports whether the request was still pending.
func (s *Scheduler) Cancel(h Handle) bool {
	if h == 0 {
		return false
	}
	for i, r := range s.queue {
		if r.h != h {
			continue
		}
		copy(s.queue[i:], s.queue[i+1:])
		s.queue[len(s.queue)-1] = request{}
		s.queue = s.queue[:len(s.queue)-1]
		return true
	}
	for i := s.pos + 1; i < len(s.running); i++ {
		if s.running[i].h == h && s.running[i].fn != nil {
			s.running[i].fn = nil
			return true
		}
	}
	return false
}

// Pending returns the number of queued requests.
func (s *Scheduler) Pending() int { return len(s.queue) }

// Frame returns the number of ticks run so far.
func (s *Scheduler) Frame() uint64 { return s.frame }

// Tick runs the requests queued before the call and returns how many ran.
//
// A request cancelled by an earlier callback of the same tick does not run.
func (s *Scheduler) Tick() int {
	s.frame++
	if len(s.queue) == 0 {
		return 0
	}

	s.running = s.queue
	s.queue = s.spare[:0]
	s.spare = nil

	ran := 0
	for s.pos = 0; s.pos < len(s.running); s.pos++ {
		fn := s.running[s.pos].fn
		if fn == nil {
			continue
		}
		fn()
		ran++
	}

	batch := s.running
	s.running = nil
	s.pos = 0
	clear(batch)
	s.spare = batch[:0]
	return ran
}
