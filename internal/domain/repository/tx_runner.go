package repository

import "context"

// RegistrationRepos the repositories bound to one transaction.
type RegistrationRepos struct {
	Users    UserRepository
	Invites  InviteCodeRepository
	Managers ManagerRepository
}

// JobRepos the job and payment repositories bound to one transaction.
type JobRepos struct {
	Jobs     JobRepository
	Payments PaymentRepository
}

// TxRunner runs fn in a transaction: committed when fn returns nil, rolled back otherwise.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(repos RegistrationRepos) error) error
	RunJob(ctx context.Context, fn func(repos JobRepos) error) error
}
