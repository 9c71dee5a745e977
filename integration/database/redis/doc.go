// Package redis provides Redis client initialization with connection
// verification, plus the short-lived OAuth state storage built on it.
//
// Connect validates the connection URL, creates a go-redis client, and
// pings with retries before handing the client back, so a returned client
// is known to be reachable. Healthcheck wraps the same ping for use in
// readiness probes.
//
// StateStore keeps OAuth state/PKCE-verifier pairs with a TTL and consumes
// them atomically with GETDEL, which makes every state single use even
// across concurrent callbacks.
//
// Usage:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	states := redis.NewStateStore(client)
package redis
