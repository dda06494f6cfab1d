/*
go-facecam shows a live webcam feed side by side with a copy of the feed
annotated by a cloud face analysis service.  A face's bounding box is drawn
with its estimated age, gender and most prevalent emotion underneath.

Two loops share the most recent frames through single value slots.  The
capture loop reads, mirrors and displays frames as fast as the camera allows
and never waits on the network.  The annotation loop runs on a fixed interval,
sends a snapshot of the latest frame to the face analysis service and stores
an annotated copy for the capture loop to pick up on its next render.  Frames
between annotation cycles are never analysed and the annotated panel lags the
live panel by up to one interval plus the request latency.

Face analysis failures are logged and the cycle is skipped, the annotated
panel keeps showing the last successful result.

See the example/facecam program for usage with a desktop window or an MJPEG
stream viewed in a browser.
*/
package facecam
