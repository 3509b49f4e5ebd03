// Package sim is the reference simulation engine.
//
// An Engine turns a fitness.Design into a Result by running one self-timed
// iteration of every application:
//
//   - each processor runs its actors in the order of the flattened
//     execution ring; an actor starts when its processor is idle and every
//     zero-token input has arrived;
//   - actor execution time is ceil(WCET·100/Speed) under the processor's
//     selected mode;
//   - inter-processor tokens leave the source processor one channel at a
//     time, in send-ring order, each taking
//     ceil(TokenSize/TDMA[src])·SlotLength;
//   - tokens between actors of one processor arrive when produced.
//
// Period(app) is the larger of the application's iteration latency and the
// busy time of every processor it uses. Energy sums power×busy time over
// all processors. Memory slack per processor is its memory minus the
// resident actors and one buffer of (tokens+1)·TokenSize per incoming
// channel. If some actor can never start, the iteration stalls and every
// application with an unfinished actor reports period -1.
package sim
