// Package jobs は定期的なメンテナンス処理を cron スケジュールで実行します。
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const contractExpiryTimeout = time.Minute

// ContractExpirer は終了日を過ぎた契約を無効化します。
type ContractExpirer interface {
	ExpireContracts(ctx context.Context) (int64, error)
}

// Scheduler は cron ランナーを保持します。
type Scheduler struct {
	cron *cron.Cron
	log  logrus.FieldLogger
}

// NewScheduler は loc でスケジュールを評価する Scheduler を生成します。loc が nil の場合は UTC です。
func NewScheduler(loc *time.Location, log logrus.FieldLogger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:  log,
	}
}

// AddContractExpiry は標準の 5 フィールド形式の cron 式で契約期限切れ処理を登録します。
func (s *Scheduler) AddContractExpiry(schedule string, expirer ContractExpirer) error {
	if _, err := s.cron.AddJob(schedule, &ContractExpiryJob{expirer: expirer, log: s.log}); err != nil {
		return fmt.Errorf("jobs: schedule contract expiry %q: %w", schedule, err)
	}
	return nil
}

// Len は登録済みのジョブ数を返します。
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Run は登録済みのジョブを開始し、ctx がキャンセルされるまでブロックした後、実行中のジョブの完了を待ちます。
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}

// ContractExpiryJob は契約期限切れ処理を 1 回実行する cron ジョブです。
type ContractExpiryJob struct {
	expirer ContractExpirer
	log     logrus.FieldLogger
}

// NewContractExpiryJob は ContractExpiryJob を生成します。
func NewContractExpiryJob(expirer ContractExpirer, log logrus.FieldLogger) *ContractExpiryJob {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ContractExpiryJob{expirer: expirer, log: log}
}

// Run は cron.Job を実装します。
func (j *ContractExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), contractExpiryTimeout)
	defer cancel()

	start := time.Now()
	changed, err := j.expirer.ExpireContracts(ctx)
	entry := j.log.WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		entry.WithError(err).Error("contract expiry sweep failed")
		return
	}
	entry.WithField("expired", changed).Info("contract expiry sweep finished")
}
