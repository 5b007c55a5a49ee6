package pygen

// utilitiesSource is the shared support module emitted once per output
// directory. It bridges an imperative send() call into the iteration shape
// the RPC runtime consumes, in a blocking and an async variant, and wraps a
// send adapter together with a response iterator into a bidirectional call
// handle that forwards cancellation, timing and status queries to the
// receive side.
const utilitiesSource = `# Generated by protoc-gen-pygrpc. DO NOT EDIT!
"""Stream adapters shared by the generated RPC bindings in this directory."""

import asyncio
import queue

_DONE = object()


class RequestStream(object):
    """Bridges send() calls into an iterator of requests."""

    def __init__(self):
        self._queue = queue.Queue()

    def send(self, value):
        self._queue.put(value)

    def close(self):
        self._queue.put(_DONE)

    def __iter__(self):
        return self

    def __next__(self):
        value = self._queue.get()
        if value is _DONE:
            raise StopIteration()
        return value


class AsyncRequestStream(object):
    """Bridges send() coroutine calls into an async iterator of requests."""

    def __init__(self):
        self._queue = asyncio.Queue()

    async def send(self, value):
        await self._queue.put(value)

    async def close(self):
        await self._queue.put(_DONE)

    def __aiter__(self):
        return self

    async def __anext__(self):
        value = await self._queue.get()
        if value is _DONE:
            raise StopAsyncIteration()
        return value


class BidiCall(object):
    """Couples a request stream with a response iterator.

    Sending and receiving run at independent rates. Cancellation, timing
    and status queries go to the receive side, which owns the underlying
    call.
    """

    def __init__(self, requests, responses):
        self._requests = requests
        self._responses = responses

    def send(self, value):
        self._requests.send(value)

    def done_writing(self):
        self._requests.close()

    def __iter__(self):
        return self

    def __next__(self):
        return next(self._responses)

    def cancel(self):
        return self._responses.cancel()

    def is_active(self):
        return self._responses.is_active()

    def time_remaining(self):
        return self._responses.time_remaining()

    def code(self):
        return self._responses.code()

    def details(self):
        return self._responses.details()


class AsyncBidiCall(object):
    """Async variant of BidiCall over an async response iterator."""

    def __init__(self, requests, responses):
        self._requests = requests
        self._responses = responses

    async def send(self, value):
        await self._requests.send(value)

    async def done_writing(self):
        await self._requests.close()

    def __aiter__(self):
        return self._responses.__aiter__()

    def cancel(self):
        return self._responses.cancel()

    def done(self):
        return self._responses.done()

    def time_remaining(self):
        return self._responses.time_remaining()

    async def code(self):
        return await self._responses.code()

    async def details(self):
        return await self._responses.details()
`
