// Package service contains the application use cases: registering and
// authenticating users, and managing the tasks each user owns.
//
// Services receive their stores and collaborators through constructor
// injection and depend only on the interfaces in internal/store, never on a
// specific database. Expected failures are reported with the sentinel errors in
// errors.go or a *domain.ValidationError; anything else is logged with its
// context and replaced by ErrInternal so storage details never reach a client.
//
// Every task operation is scoped by the requesting user's ID. A task owned by
// someone else is reported exactly like a task that does not exist.
package service
