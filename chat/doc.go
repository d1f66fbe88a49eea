// Package chat is the conversational front-end contract.
//
// A Handler turns one user message into one reply. It is stateless: the
// conversation history a front-end passes in is accepted but never
// consulted. Recoverable failures, such as an unreachable embedding
// service, become an apology rather than an error so a chat session can
// continue.
//
// Batch answers many questions at once on an ants worker pool:
//
//	batch, err := chat.NewBatch(handler, chat.WithPoolSize(4))
//	if err != nil {
//		return err
//	}
//	defer batch.Release()
//	for _, answer := range batch.Answer(ctx, questions) {
//		fmt.Println(answer.Reply)
//	}
package chat
