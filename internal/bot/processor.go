// Package bot drives one inbound message through the whole pipeline:
// duplicate suppression, send caps, the attendance schedule, human
// plausible delays, classification, identity collection, and the
// final redirect.
package bot

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dcamposl/uniwabot-go/internal/antiblock"
	"github.com/dcamposl/uniwabot-go/internal/classify"
	"github.com/dcamposl/uniwabot-go/internal/config"
	"github.com/dcamposl/uniwabot-go/internal/conversation"
	"github.com/dcamposl/uniwabot-go/internal/ctxutil"
	"github.com/dcamposl/uniwabot-go/internal/department"
	"github.com/dcamposl/uniwabot-go/internal/identity"
	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/metrics"
	"github.com/dcamposl/uniwabot-go/internal/monitor"
	"github.com/dcamposl/uniwabot-go/internal/reply"
	"github.com/dcamposl/uniwabot-go/internal/storage"
	"github.com/dcamposl/uniwabot-go/internal/transport"
)

// Inbound is one received message event.
type Inbound struct {
	MessageID string
	Sender    string
	Body      string
	Timestamp time.Time
	FromSelf  bool
	FromGroup bool
}

// Outcome labels how a message was handled, used as a metric label.
const (
	outcomeDuplicate        = "duplicate"
	outcomeBusy             = "busy"
	outcomeRateLimited      = "rate_limited"
	outcomeOffHours         = "off_hours"
	outcomeCommand          = "command"
	outcomeGeneral          = "general"
	outcomeAwaitingIdentity = "awaiting_identity"
	outcomeRedirected       = "redirected"
	outcomeRetryPrompt      = "retry_prompt"
	outcomeRestart          = "restart"
	outcomeError            = "error"
)

const careerCommand = "carreras"

// Processor handles inbound messages end to end.
type Processor struct {
	cfg        *config.Config
	log        *logger.Logger
	metrics    *metrics.Metrics
	monitor    *monitor.Monitor
	transport  transport.Transport
	classifier *classify.Classifier
	store      conversation.Store
	dedup      *conversation.Deduplicator
	busy       *conversation.BusyGuard
	guard      *antiblock.Guard
	schedule   *antiblock.Schedule
	timing     *antiblock.Timing
	builder    *reply.Builder
	db         *storage.DB // nil disables persistence

	sleep func(ctx context.Context, d time.Duration)
	intn  func(n int) int
	now   func() time.Time
}

// Deps bundles the processor's collaborators.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	Metrics    *metrics.Metrics
	Monitor    *monitor.Monitor
	Transport  transport.Transport
	Classifier *classify.Classifier
	Store      conversation.Store
	DB         *storage.DB // optional
}

// New creates a Processor.
func New(d Deps) *Processor {
	loc := d.Config.Location()
	return &Processor{
		cfg:        d.Config,
		log:        d.Logger.WithModule("bot"),
		metrics:    d.Metrics,
		monitor:    d.Monitor,
		transport:  d.Transport,
		classifier: d.Classifier,
		store:      d.Store,
		dedup:      conversation.NewDeduplicator(d.Config.DedupWindow, d.Config.DedupMaxEntries),
		busy:       conversation.NewBusyGuard(),
		guard:      antiblock.NewGuard(d.Config.Limits, loc),
		schedule:   antiblock.NewSchedule(d.Config.Schedule, loc),
		timing:     antiblock.NewTiming(d.Config.Delays),
		builder:    reply.NewBuilder(),
		db:         d.DB,
		sleep:      sleepCtx,
		intn:       rand.IntN,
		now:        time.Now,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Process handles one inbound message. It never returns an error: all
// failures end in a best-effort apology and a reset conversation.
func (p *Processor) Process(ctx context.Context, msg Inbound) {
	switch {
	case msg.FromSelf:
		p.metrics.RecordReceived("own")
		return
	case msg.FromGroup:
		p.metrics.RecordReceived("group")
		return
	}

	body := strings.TrimSpace(msg.Body)
	if body == "" {
		p.metrics.RecordReceived("empty")
		return
	}
	p.metrics.RecordReceived("text")

	ctx = ctxutil.WithSenderID(ctx, msg.Sender)
	if msg.MessageID != "" {
		ctx = ctxutil.WithMessageID(ctx, msg.MessageID)
	}
	log := p.log.WithField("sender", msg.Sender)

	start := p.now()
	if p.dedup.IsDuplicate(msg.Sender, body, start) {
		p.metrics.DuplicatesDropped.Inc()
		p.metrics.RecordProcessed(outcomeDuplicate, p.now().Sub(start))
		log.DebugContext(ctx, "duplicate message ignored")
		return
	}

	if !p.busy.TryAcquire(msg.Sender) {
		p.metrics.RecordProcessed(outcomeBusy, p.now().Sub(start))
		log.DebugContext(ctx, "sender already being processed, message dropped")
		return
	}
	defer p.busy.Release(msg.Sender)

	outcome := p.handle(ctx, log, msg, body)
	p.metrics.RecordProcessed(outcome, p.now().Sub(start))
}

func (p *Processor) handle(ctx context.Context, log *logger.Logger, msg Inbound, body string) string {
	now := p.now()

	if ok, limit := p.guard.Admit(msg.Sender, now); !ok {
		p.metrics.RecordRateLimitDrop(string(limit))
		if limit == antiblock.LimitSender {
			// Per-sender flooding gets a polite brake; global caps
			// stay silent so the volume does not grow further.
			p.sleep(ctx, 2*time.Second)
			if err := p.transport.SendReply(ctx, msg.Sender, p.builder.RateLimited()); err != nil {
				log.WithError(err).WarnContext(ctx, "failed to send rate limit notice")
			}
		}
		log.WithField("limit", string(limit)).InfoContext(ctx, "message dropped by send cap")
		return outcomeRateLimited
	}

	if !p.schedule.IsOpen(now) {
		p.metrics.OffHoursTotal.Inc()
		p.sleep(ctx, p.randBetween(1500, 3000))
		p.send(ctx, log, msg.Sender, p.builder.OffHours(), now)
		log.InfoContext(ctx, "outside business hours, closed notice sent")
		return outcomeOffHours
	}

	readDelay := p.timing.ReadDelay(body)
	p.metrics.RecordDelay("read", readDelay)
	p.sleep(ctx, readDelay)
	if err := p.transport.MarkRead(ctx, msg.Sender); err != nil {
		log.WithError(err).WarnContext(ctx, "failed to mark chat as read")
	}

	if strings.EqualFold(body, careerCommand) {
		p.send(ctx, log, msg.Sender, p.builder.CareerList(), now)
		return outcomeCommand
	}

	record, active := p.store.Get(msg.Sender)
	var outcome string
	var err error
	switch {
	case !active || record.State == conversation.StateInitial:
		outcome, err = p.handleInitial(ctx, log, msg, body, now)
	case record.State == conversation.StateAwaitingIdentity:
		outcome, err = p.handleIdentity(ctx, log, msg, body, record, now)
	default:
		p.store.Delete(msg.Sender)
		outcome, err = outcomeRestart, p.send(ctx, log, msg.Sender, p.builder.Restart(), now)
	}

	if err != nil {
		p.fail(ctx, log, msg.Sender, err)
		return outcomeError
	}
	return outcome
}

// handleInitial classifies the first message of a conversation. A
// routable department starts the identity collection flow; anything
// else gets a general answer.
func (p *Processor) handleInitial(ctx context.Context, log *logger.Logger, msg Inbound, body string, now time.Time) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, config.ClassifyRequest)
	result := p.classifier.Classify(cctx, body)
	cancel()

	log.WithFields(map[string]any{
		"department": result.Department.String(),
		"method":     string(result.Method),
	}).InfoContext(ctx, "message classified")

	if !result.Department.IsRoutable() {
		if err := p.send(ctx, log, msg.Sender, p.builder.General(), now); err != nil {
			return "", err
		}
		p.persist(ctx, msg, body, result.Department, false)
		return outcomeGeneral, nil
	}

	dept, _ := department.Get(result.Department)
	p.store.Put(conversation.Record{
		SenderID:   msg.Sender,
		State:      conversation.StateAwaitingIdentity,
		Department: result.Department,
		Inquiry:    body,
		UpdatedAt:  now,
	})
	if err := p.send(ctx, log, msg.Sender, p.builder.DataRequest(dept), now); err != nil {
		return "", err
	}
	return outcomeAwaitingIdentity, nil
}

// handleIdentity consumes the sender's answer to the data request.
func (p *Processor) handleIdentity(ctx context.Context, log *logger.Logger, msg Inbound, body string, record conversation.Record, now time.Time) (string, error) {
	student, ok := identity.Parse(body)
	p.metrics.RecordIdentityParse(ok)

	if !ok {
		record.Retries++
		if p.cfg.IdentityMaxRetries > 0 && record.Retries >= p.cfg.IdentityMaxRetries {
			p.store.Delete(msg.Sender)
			log.WithField("retries", record.Retries).InfoContext(ctx, "identity retries exhausted, conversation reset")
			if err := p.send(ctx, log, msg.Sender, p.builder.Restart(), now); err != nil {
				return "", err
			}
			return outcomeRestart, nil
		}
		record.UpdatedAt = now
		p.store.Put(record)
		if err := p.send(ctx, log, msg.Sender, p.builder.RetryPrompt(), now); err != nil {
			return "", err
		}
		return outcomeRetryPrompt, nil
	}

	dept, found := department.Get(record.Department)
	if !found {
		// Catalog changed underneath an in-flight conversation.
		p.store.Delete(msg.Sender)
		if err := p.send(ctx, log, msg.Sender, p.builder.Restart(), now); err != nil {
			return "", err
		}
		return outcomeRestart, nil
	}

	text, err := p.builder.Redirect(dept, record.Inquiry, student)
	if err != nil {
		return "", err
	}
	if err := p.send(ctx, log, msg.Sender, text, now); err != nil {
		return "", err
	}

	log.WithFields(map[string]any{
		"department": dept.Code.String(),
		"confidence": student.Confidence.String(),
	}).InfoContext(ctx, "sender redirected")
	p.metrics.RecordRedirect(dept.Code.String())

	p.notifyDepartment(ctx, log, dept, record, student, msg.Sender)
	p.persist(ctx, msg, record.Inquiry, dept.Code, true)
	p.store.Delete(msg.Sender)
	return outcomeRedirected, nil
}

// notifyDepartment forwards the case summary to the department's own
// number. Failures are logged and swallowed: the student already has
// the link, the notification is a courtesy.
func (p *Processor) notifyDepartment(ctx context.Context, log *logger.Logger, dept department.Department, record conversation.Record, student identity.Student, sender string) {
	p.sleep(ctx, p.randBetween(3000, 6000))

	note := p.builder.Notification(record.Inquiry, sender, student, p.now())
	if err := p.transport.SendMessage(ctx, dept.Phone, note); err != nil {
		log.WithError(err).WithField("department", dept.Code.String()).
			ErrorContext(ctx, "failed to notify department")
		p.monitor.RecordFailure()
		return
	}
	p.monitor.RecordSent()

	if p.db != nil {
		link, err := reply.BuildShortLink(dept.Phone)
		if err == nil {
			r := &storage.Redirect{Sender: sender, Department: dept.Code.String(), Link: link}
			if err := p.db.RecordRedirect(ctx, r); err != nil {
				log.WithError(err).WarnContext(ctx, "failed to record redirect")
			}
		}
	}
}

// send runs the typing indicator, the typing delay, the reply, and the
// send-cap accounting as one unit.
func (p *Processor) send(ctx context.Context, log *logger.Logger, sender, text string, now time.Time) error {
	if err := p.transport.SendTyping(ctx, sender); err != nil {
		log.WithError(err).WarnContext(ctx, "failed to set typing indicator")
	}

	typingDelay := p.timing.TypingDelay(len([]rune(text)))
	p.metrics.RecordDelay("typing", typingDelay)
	p.sleep(ctx, typingDelay)

	if err := p.transport.SendReply(ctx, sender, text); err != nil {
		p.monitor.RecordFailure()
		return err
	}

	p.guard.Confirm(sender, now)
	p.monitor.RecordSent()
	return nil
}

// fail apologizes and resets the sender's conversation.
func (p *Processor) fail(ctx context.Context, log *logger.Logger, sender string, err error) {
	log.WithError(err).ErrorContext(ctx, "message processing failed")

	p.sleep(ctx, 2*time.Second)
	if sendErr := p.transport.SendReply(ctx, sender, p.builder.Apology()); sendErr != nil {
		log.WithError(sendErr).ErrorContext(ctx, "failed to send apology")
	}
	p.store.Delete(sender)
}

// persist records the processed message when storage is configured.
func (p *Processor) persist(ctx context.Context, msg Inbound, inquiry string, code department.Code, redirected bool) {
	if p.db == nil {
		return
	}

	responseTime := int64(0)
	if !msg.Timestamp.IsZero() {
		responseTime = p.now().Sub(msg.Timestamp).Milliseconds()
	}
	err := p.db.RecordMessage(ctx, &storage.Message{
		Sender:         msg.Sender,
		Body:           inquiry,
		Department:     code.String(),
		Redirected:     redirected,
		ResponseTimeMs: responseTime,
	})
	if err != nil {
		p.log.WithError(err).WarnContext(ctx, "failed to persist message")
	}
}

// randBetween returns a random duration in [min, max) milliseconds.
func (p *Processor) randBetween(min, max int) time.Duration {
	return time.Duration(min+p.intn(max-min)) * time.Millisecond
}

// ActiveConversations reports how many identity flows are in progress.
func (p *Processor) ActiveConversations() int {
	return p.store.Len()
}

// DailyCount reports today's confirmed sends, for the periodic stats log.
func (p *Processor) DailyCount() int {
	return p.guard.DailyCount(p.now())
}
