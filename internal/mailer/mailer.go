package mailer

import (
	"autorecruiter/internal/components/assert"
	"autorecruiter/internal/components/chrono"
	"autorecruiter/internal/components/telemetry"
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_mailer_send    = "mailer.send"
	report_mailer_reports = "mailer.reports"
)

// reportDateLayout matches the date in report filenames.
const reportDateLayout = "20060102"

var tracer = otel.Tracer("autorecruiter.mailer")

var ErrNoReports = errors.New("no job reports found for today")

// FindReports lists the .xlsx files directly inside dir whose name contains
// the given date formatted as YYYYMMDD.
func FindReports(dir string, date time.Time) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read report dir: %w", err)
	}
	stamp := date.Format(reportDateLayout)

	var out []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".xlsx") || !strings.Contains(name, stamp) {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}

func Subject(date time.Time) string {
	return fmt.Sprintf("Job Report: %s", date.Format("Jan 02, 2006"))
}

const messageBody = "Attached are the jobs found from Indeed"

// BuildMessage creates the report email with every file attached.
func BuildMessage(from string, to, files []string, date time.Time) (*email.Email, error) {
	mail := email.NewEmail()
	mail.From = from
	mail.To = to
	mail.Subject = Subject(date)
	mail.Text = []byte(messageBody)

	for _, file := range files {
		_, err := mail.AttachFile(file)
		if err != nil {
			return nil, fmt.Errorf("attach %s: %w", file, err)
		}
	}
	return mail, nil
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, mail *email.Email) error
}

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

func (c SmtpConfig) addr() string {
	return fmt.Sprintf("%s:%d", c.Server, c.Port)
}

type SmtpSender struct {
	config SmtpConfig
}

func NewSmtpSender(config SmtpConfig) SmtpSender {
	assert.NotEmptyStr(config.Server)
	return SmtpSender{config: config}
}

func (s SmtpSender) Send(ctx context.Context, mail *email.Email) error {
	_, span := tracer.Start(ctx, "Send")
	defer span.End()
	span.SetAttributes(
		attribute.String("smtp.server", s.config.addr()),
		attribute.Int("mail.attachments", len(mail.Attachments)),
	)

	err := mail.Send(
		s.config.addr(),
		smtp.PlainAuth("", s.config.EmailAddress, s.config.Password, s.config.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(s.config.addr(), nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}
	return nil
}

// Mailer sends the reports generated today.
type Mailer struct {
	sender Sender
	tel    telemetry.API
	time   chrono.TimeAPI
}

func NewMailer(sender Sender, tel telemetry.API, time chrono.TimeAPI) Mailer {
	assert.NotNil(sender)
	assert.NotNil(tel)
	assert.NotNil(time)
	return Mailer{
		sender: sender,
		tel:    telemetry.NewScopedAPI("mailer", tel),
		time:   time,
	}
}

// SendReports emails every report in dir dated today, it returns the attached files.
func (m Mailer) SendReports(ctx context.Context, from string, to []string, dir string) ([]string, error) {
	if len(to) == 0 {
		return nil, fmt.Errorf("no recipients given")
	}

	today := m.time.Now().In(chrono.Eastern())
	files, err := FindReports(dir, today)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoReports
	}
	m.tel.ReportCount(report_mailer_reports, int64(len(files)))

	mail, err := BuildMessage(from, to, files, today)
	if err != nil {
		return nil, err
	}
	err = m.sender.Send(ctx, mail)
	if err != nil {
		m.tel.ReportBroken(report_mailer_send, err, to)
		return nil, fmt.Errorf("send report email: %w", err)
	}
	return files, nil
}
