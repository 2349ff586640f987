// Package activity provides an HTTP client for the wtd activities API.
//
// # Overview
//
// The activities API recommends places to spend time while an electric
// vehicle charges, and estimates how long a user's charge will take. This
// package wraps its two endpoints and turns failures into errors whose
// message can be shown to a user as-is.
//
// # Client Usage
//
//	client, err := activity.NewClient("http://localhost:8080/api/v1/activities",
//		activity.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	res, err := client.Recommend(ctx, activity.RecommendRequest{ChargingTime: 30})
//	if err != nil {
//		showError(err.Error())
//	}
//
// # API Endpoints
//
//   - POST /recommend: JSON criteria in, {"recommendations": [...]} out
//   - GET /estimated-time/{userId}: {"estimatedTime": n} out
//
// # Error Handling
//
// Three failure kinds reach the caller:
//
//   - Transport errors: connection refused, DNS, context cancellation.
//     Wrapped as "execute request: ..."; errors.Is still finds the cause.
//   - HTTP errors: any non-2xx status becomes *APIError. For /recommend the
//     server's {"message": ...} is used when it can be decoded, otherwise
//     DefaultRecommendMessage. /estimated-time always uses
//     DefaultEstimatedTimeMessage.
//   - Decode errors: a 2xx response with a malformed body.
//
// Every failure is logged at error level before it is returned. Nothing is
// retried and no request timeout is set unless WithTimeout is used; callers
// bound requests with their context.
//
// # Thread Safety
//
// The Client is safe for concurrent use.
package activity
