package usecases_port

import "context"

type DeleteUserUseCasePort interface {
	Execute(ctx context.Context, id int64) error
}
